package extractor

// Fixtures mirror a component that mixes bound, built-in and unbound tags.

var collectFixture = `
  const Def = 1 as any
  
  const TestComponent: React.FC = ({ a }) => {
    const b = a?.b
    const c = b ?? a?.d
    return (
      <Abc className="flex flex-col">
        <Def>
          <Efg className={c ? "justify-center" : "justify-start"} />
          <Ghi className={` + "`" + `flex flex-col ${c(a?.e) && "flex"} ${(a && b) || c ? "justify-center" : "justify-start"}` + "`" + `} />
          <Efg className="justify-center" />
          <Ghi />
          <section />
        </Def>
        <ul>
          <li>123</li>
          <li>456</li>
          <li>789</li>
        </ul>
      </Abc>
    )
  }
    `

var noUnboundFixture = `
  const Def = 1 as any
  
  const TestComponent: React.SFC = () => {
    const c = a?.b ?? c
    return (
      <Def>
        <section />
      </Def>
    )
  }
    `

var mismatchedFixture = `
  const Def = 1 as any
  
  const TestComponent: React.SFC = () => {
    const c = a?.b ?? c
    return (
      <Abc someAttrs>
        <Def>
          <Ghi />
          <section />
        </Def>
        <ul>
          <li>123</li>
          <li>456</li>
          <li>789</li>
        </ul>
      </Xyz>
    )
  }
    `

var locateFixture = `
const Def = 1 as any

const TestComponent: React.FC = ({ a }) => {
  const b = a?.b
  const c = b ?? c
  return (
    <Abc className="flex flex-col">
      <Def>
        <Efg className={c ? "justify-center" : "justify-start"} />
        <Ghi className={` + "`" + `flex flex-col ${c && "flex"} ${(a && b) || c ? "justify-center" : "justify-start"}` + "`" + `} />
        <Efg className="justify-center" />
        <Ghi />
        <section />
      </Def>
      <ul>
        <li>123</li>
        <li>456</li>
        <li>789</li>
      </ul>
    </Abc>
  )
}
  `
